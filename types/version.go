package types

// Version is the canonical project version, shared by the CLI and the
// compute request contract.
const Version = "0.6.0"
