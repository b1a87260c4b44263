package radio_test

import (
  "testing"

  "github.com/robertof/go-beacon-radar/radio"
)

func TestParseIdentity(t *testing.T) {
  id, err := radio.ParseIdentity("28:EC:9A:2E:65:D7")

  if err != nil {
    t.Fatalf("ParseIdentity() got error: %v", err)
  }

  want := radio.Identity{0xd7, 0x65, 0x2e, 0x9a, 0xec, 0x28}

  if id != want {
    t.Fatalf("ParseIdentity(): got %x, wanted %x", id, want)
  }

  if got := id.String(); got != "28:ec:9a:2e:65:d7" {
    t.Fatalf("String(): got %q", got)
  }
}

func TestParseIdentity_Invalid(t *testing.T) {
  for _, s := range []string{"", "nope", "00:11:22:33:44:55:66:77"} {
    if _, err := radio.ParseIdentity(s); err == nil {
      t.Fatalf("ParseIdentity(%q): expected error", s)
    }
  }
}

func TestSignalFromRSSI(t *testing.T) {
  tests := map[int]radio.Signal{
    -80:  -80,
    -200: -128,
    300:  127,
    0:    0,
  }

  for rssi, want := range tests {
    if got := radio.SignalFromRSSI(rssi); got != want {
      t.Fatalf("SignalFromRSSI(%d) = %d, wanted %d", rssi, got, want)
    }
  }
}
