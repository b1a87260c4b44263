package utils

// Reverse returns a reversed copy of s. Addresses travel least significant octet first
// and are printed the other way around.
func Reverse[S ~[]E, E any](s S) S {
  out := make(S, len(s))

  for i, e := range s {
    out[len(s)-1-i] = e
  }

  return out
}
