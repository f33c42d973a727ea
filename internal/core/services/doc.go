// Package services implements the core adaptation logic behind the
// driving ports: profile resolution, mapping rule evaluation, UX and
// copy construction, compliance auditing, lift estimation, and the
// five-stage pipeline orchestrator that threads state between them.
//
// All components except the orchestrator are pure functions of their
// inputs and the immutable catalog loaded at startup; the orchestrator
// is the only place with external latency (inference gateway calls)
// and persistence (variant store).
package services
