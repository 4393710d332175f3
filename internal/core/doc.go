// Package core runs mounted table views on behalf of a server or CLI.
//
// A [Service] owns every live view instance. Each instance is one
// [table.View] with its own record set and interaction state; instances never
// share mutable state. The service adds what a long-running process needs
// around the engine:
//
//   - Instance lifecycle: [Service.Mount] creates and starts an instance,
//     [Service.Instance] looks it up and marks it as seen, and
//     [Service.Unmount] tears it down. Fetch results that arrive after an
//     unmount are discarded by the view itself.
//   - Idle reaping: [Service.StartInstanceReaper] unmounts instances that
//     have not been touched within the idle TTL.
//   - Export limiting: [ExportLimiter] bounds how many workbooks and PDFs
//     are rendered at once.
//   - Recommendation write-back: [Service.Recommend] validates the value,
//     persists it through the source and refetches the instance.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - SRC001-SRC003: Data source errors (payload, endpoint, reachability)
//   - VIEW001-VIEW005: View errors (unknown view, expired instance, bad input)
//   - EXP001-EXP003: Export errors (busy, format, rendering)
//   - DB001-DB004: Database errors
//   - REQ001-REQ003: Request cancelled, timed out or malformed
//   - RATE001, AUTH001-AUTH002: Rate limiting and API key errors
package core
