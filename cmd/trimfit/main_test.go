package main

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/trimfit/pkg/version"
)

var _ = Describe("checkFlags", func() {
	It("accepts the default combination", func() {
		Expect(checkFlags(false, false, false, false)).To(Succeed())
	})

	It("accepts one mode with one orientation", func() {
		Expect(checkFlags(true, false, false, false)).To(Succeed())
		Expect(checkFlags(false, true, true, false)).To(Succeed())
		Expect(checkFlags(false, false, false, true)).To(Succeed())
	})

	It("rejects --trim combined with --fit", func() {
		err := checkFlags(true, true, false, false)
		Expect(err).To(MatchError(ContainSubstring("--trim and --fit")))
	})

	It("rejects --landscape with --portrait in every mode", func() {
		for _, mode := range [][2]bool{{false, false}, {true, false}, {false, true}} {
			err := checkFlags(mode[0], mode[1], true, true)
			Expect(err).To(MatchError(ContainSubstring("--landscape and --portrait")), "trim=%v fit=%v", mode[0], mode[1])
		}
	})
})

var _ = Describe("versionString", func() {
	It("prints the one-line form by default", func() {
		Expect(versionString(false)).To(HavePrefix("trimfit"))
		Expect(versionString(false)).To(ContainSubstring(version.Version))
	})

	It("prints the detailed form for verbose runs", func() {
		detailed := versionString(true)
		Expect(detailed).To(ContainSubstring(version.Version))
		Expect(detailed).To(ContainSubstring(version.CommitSHA))
	})
})
