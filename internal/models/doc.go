// Package models defines the core domain models for Fluxy.
//
// # Models
//
//   - Subscription: a recurring charge, optionally shared with family members
//   - Rotation: the ordered payer cycle attached to a familial subscription
//   - PaymentEntry: one settled month in a subscription's payment history
//   - Member: a household participant (independent lifecycle from subscriptions)
//   - Budget: a monthly spending limit, overall or per category
//   - Message: a note between users, including generated payment reminders
//   - User: a registered account
//
// # Design Principles
//
//  1. **Snapshots over shared state**: the ledger engine consumes and returns
//     whole Subscription values; Clone helpers keep transitions copy-on-write.
//  2. **Avoid circular references**: relationships use ID strings, never
//     pointers to other models.
//  3. **Exact money**: amounts are shopspring decimals, not floats, so
//     fair-share arithmetic stays reproducible.
//
// Months are identified everywhere by a "YYYY-MM" key (see ledger.MonthKey).
package models
