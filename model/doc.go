// Package model defines the provider-agnostic generation boundary of
// convosim.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Map conversation turns onto provider chat roles in one place
//   - Facilitate lightweight mocking for tests (MockClient)
//
// Providers (e.g. OpenAI, Anthropic) implement the Client interface from this
// package so the invoker and orchestrator remain decoupled from vendor SDKs.
package model
