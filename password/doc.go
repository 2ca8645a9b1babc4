// Package password implements password verification and hashing for the
// credential directory.
//
// # Supported schemes
//
// Two salted adaptive schemes are recognized, selected by the stored hash
// prefix:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>   (PHC format)
//	$2a$ / $2b$ / $2y$ ...                                         (bcrypt)
//
// New hashes produced by [Hasher.Hash] are always argon2id; bcrypt support
// exists so directories seeded from legacy bcrypt stores verify without
// migration. [Hasher.NeedsRehash] reports bcrypt hashes as upgrade candidates.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Validity windows, failure
// messaging, and enumeration resistance are enforced by the directory
// verifier.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords; callers supply plaintext and receive hashes.
//   - Import any other cookieauth package.
//   - Log plaintext passwords or hash parameters at runtime.
package password
