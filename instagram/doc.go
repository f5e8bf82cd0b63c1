// Package instagram defines the contract this service assumes from the
// external private-API protocol client, along with the shared error
// vocabulary every call site classifies against.
//
// The wire protocol itself (request signing, endpoint selection, payload
// encryption) is out of scope here: implementations of Client are external
// collaborators, and the broker treats them as opaque and unreliable.
package instagram
