// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: username, password
  - CreateQuizRequest: title, description, teacher_id
  - UpdateQuizRequest: title, description

# Response Types

  - MessageResponse: message
  - HealthResponse: status
  - ErrorResponse: message, error (panic handler only)

# Domain Types

  - User: id, username, password (never serialized)
  - Quiz: id, title, description, teacher_id, created_at

created_at is encoded as an RFC 3339 timestamp.
*/
package models
