// Package delivery holds the DeliveryRequest aggregate and the two
// independent state machines that drive it.
//
// The driver axis (Status) moves Pending -> Assigned -> Picked -> Delivered,
// with Assigned -> Pending as the single reverse edge (unassignment). The
// shop axis (ConfirmationStatus) moves Pending -> Accepted | Rejected and
// stops at Rejected. The two axes never constrain each other: a driver may
// claim a request the shop has not confirmed, or even rejected.
//
// Field ownership is partitioned by role. Customers create and cancel,
// drivers claim, advance and release, shops confirm. Every mutation takes the
// acting kernel.Actor explicitly and records one Event that the unit of work
// publishes after commit.
package delivery
