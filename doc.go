// Package todoapp implements an authenticated to-do list backend:
// credential storage with bcrypt, HS256 access tokens paired with
// rotating opaque refresh tokens, and per-user to-do items over a
// relational store.
//
// The root package holds the domain: models, repositories, the token
// service, the authenticator, and the HTTP controllers. Bearer-token
// enforcement lives in middleware/jwtware, startup configuration in
// config, and the entrypoint in cmd/server.
package todoapp
