// Package api contains the HTTP handlers and error mapping for the
// playbook generation endpoint. It translates between the JSON transport
// shape and the generation pipeline, keeping detailed failure causes
// server-side.
package api
