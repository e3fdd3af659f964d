package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for algorithm migration.
const (
	DomainInstruction = "gapp/instruction/v1"
	DomainRequest     = "gapp/cas-request/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// InstructionID computes the content-addressed ID of an instruction.
// Structurally equal instructions have equal IDs, so a copy and its
// original share an ID.
func InstructionID(inst Instruction) (string, error) {
	canonical, err := MarshalCanonical(Encode(inst))
	if err != nil {
		return "", fmt.Errorf("InstructionID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainInstruction, canonical), nil
}

// MustInstructionID is like InstructionID but panics on error.
// Encode never produces floats or nulls, so this only panics on a bug.
func MustInstructionID(inst Instruction) string {
	id, err := InstructionID(inst)
	if err != nil {
		panic(err)
	}
	return id
}

// RequestKey computes the cache key of a CAS request made of lines.
// Lines are joined with '\n', so ["a", "b"] and ["a\nb"] share a key;
// requests are line oriented and never contain embedded newlines.
func RequestKey(lines []string) string {
	return hashWithDomain(DomainRequest, []byte(strings.Join(lines, "\n")))
}
