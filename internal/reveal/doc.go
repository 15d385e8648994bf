// Package reveal defines the domain model for gating exercise solutions
// behind a password prompt.
//
// It is intentionally split into:
//   - Immutable configuration (Registry): exercise id -> expected secret
//   - A stateless operation (Revealer.Reveal): one prompt, one comparison,
//     one visibility change
//
// All user interaction and page access goes through the Prompter, Notifier
// and Page ports, so the operation is fully testable without a terminal or a
// real page.
package reveal
