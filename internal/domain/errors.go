package domain

import "errors"

// Interview error types

var (
	// ErrNotFound indicates an unknown session id or a selector that matches no catalog entry
	ErrNotFound = errors.New("not found")

	// ErrInvalidState indicates an operation on a session that has already completed
	ErrInvalidState = errors.New("invalid session state")

	// ErrForbidden indicates a session owned by another user
	ErrForbidden = errors.New("forbidden")

	// ErrGateway indicates the LLM call failed; the protocol does not look further into the cause
	ErrGateway = errors.New("llm gateway error")

	// ErrParse indicates model output that could not be turned into an evaluation report
	ErrParse = errors.New("unparseable model output")

	// ErrHistoryDisabled indicates no history store is configured
	ErrHistoryDisabled = errors.New("history store disabled")
)

// LLM provider error types

var (
	// ErrLLMUnavailable indicates the LLM provider could not be reached
	ErrLLMUnavailable = errors.New("llm service unavailable")

	// ErrLLMTimeout indicates a request to the LLM provider timed out
	ErrLLMTimeout = errors.New("llm request timeout")

	// ErrInvalidRequest indicates an invalid request was made (4xx client errors)
	ErrInvalidRequest = errors.New("invalid request")
)
