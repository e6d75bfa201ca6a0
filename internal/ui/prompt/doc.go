// Package prompt provides the interactive questions git-org asks.
//
//   - [Confirm]: single-key yes/no prompt, default no
//   - [Approval]: accepts or declines a proposed plan, falling back to a
//     line-based question when stdin is not a terminal
package prompt
