// Package models defines the core domain records for Studyhall.
//
// # Records
//
//   - User: an account that can host, join and be invited to groups
//   - Group: a time-boxed, capacity-bounded study session owned by one host
//   - Membership: "is seated in" relation between a User and a Group
//   - Invitation: a pending offer for a User to join a Group
//   - Notification: a side-effect record telling a User that something happened
//
// # Design Principles
//
//  1. **IDs, not pointers**: relationships are expressed with ID strings
//  2. **Counters mirror rows**: Group.CurrentSize always equals the number of
//     Membership rows for that group once a transaction has committed
//  3. **No terminal invitation states**: an invitation exists while it is
//     pending and is deleted when accepted, rejected, overwritten or expired
//  4. **UTC instants**: every time.Time stored or compared is UTC
package models
