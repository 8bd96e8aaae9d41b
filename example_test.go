package aestrace_test

import (
	"fmt"
	"log"
	"strings"

	"github.com/vdparikh/aestrace"
)

func ExampleEncrypt() {
	res, err := aestrace.Encrypt(
		"00112233445566778899aabbccddeeff",
		"000102030405060708090a0b0c0d0e0f",
		aestrace.ECB, "")
	if err != nil {
		log.Fatal(err)
	}
	lines := strings.Split(res.Trace, "\n")
	fmt.Println(res.Hex)
	fmt.Println(lines[1])
	fmt.Println(lines[len(lines)-1])
	// Output:
	// 69c4e0d86a7b0430d8cdb78070b4c55a
	// round 0 addRoundKey (k0):	00102030405060708090a0b0c0d0e0f0
	// end of block:	69c4e0d86a7b0430d8cdb78070b4c55a
}

func ExampleExpandKey() {
	exp, err := aestrace.ExpandKey("2b7e151628aed2a6abf7158809cf4f3c")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(exp.Variant, len(exp.Expanded))
	fmt.Println(strings.Split(exp.RoundKeysHex(), "\n")[1])
	// Output:
	// AES-128 176
	// a0fafe1788542cb123a339392a6c7605
}
