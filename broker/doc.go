// Package broker drives per-account Instagram sessions on top of the
// external protocol client: the login/two-factor/challenge state machine,
// durable session persistence and restoration, timeout-bounded fetch
// orchestration with fallback strategies, and isolated-failure mass direct
// message dispatch.
//
// The registry and pending-request maps are process-wide with process
// lifetime. Requests for different account ids are independent; callers must
// not issue two state-changing calls (login, two-factor completion,
// challenge submission, restore) concurrently for the same account id; the
// underlying client handle is not designed for that and the Service does not
// take a per-account lock.
package broker
