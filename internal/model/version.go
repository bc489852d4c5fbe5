package model

// Version of the shim itself. `node --version` is answered by deno.
const Version = "0.3.0"
