/*
Package domain contains the core domain models for the provisio engine.

It defines the fundamental entities of the provisioning conversation, such as
the Session, the conversation State enum, the closed ResourceType enum, and
the turn request/result envelopes exchanged with callers. This package is kept
pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Session: One user's in-progress provisioning conversation, keyed by an opaque ID.
  - State: The conversation state machine position (resource_selection, region, ...).
  - ResourceType: The closed set of provisionable Azure resource kinds.
  - Snapshot: The validated, read-only configuration handed to dispatch targets.
  - TurnResult: What one request/response exchange returns to the caller.
*/
package domain
