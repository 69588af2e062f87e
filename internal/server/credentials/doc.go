// Package credentials owns per-identity secrets: salt generation, password
// hashing and verification.
//
// A password is never stored. What is stored is the salt (32 hex characters
// drawn from crypto/rand) and an Argon2id digest of password+salt, encoded
// together with the algorithm and its cost parameters:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<base64 digest>
//
// Because each stored hash describes how it was produced, cost parameters
// can be raised later without invalidating existing hashes.
package credentials
