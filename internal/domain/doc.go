// Package domain contains the core business entities and domain logic of the
// reminder service: the Task entity, the reminder type enumeration, and the
// pure classification rules that decide whether a task is overdue or due soon.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
