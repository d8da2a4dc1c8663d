package e2e_test

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/awgbot/stack-doctor/checkup"
)

var _ = Describe("doctor run against live docker", func() {
	It("completes the whole sequence and renders a summary", func() {
		set, err := checkup.LoadSettings("")
		Expect(err).ToNot(HaveOccurred())
		cfg := checkup.ResolveConfig(".env")

		var out bytes.Buffer
		runner := checkup.NewRunner(checkup.NewDockerCLIProbe(set), cfg, set, &out, false)
		verdict := runner.Run(context.Background())

		Expect(verdict.ExitCode).To(BeElementOf(0, 1))
		Expect(out.String()).To(ContainSubstring("check(s) total"))
	})

	It("reports the daemon version in the first line", func() {
		set, err := checkup.LoadSettings("")
		Expect(err).ToNot(HaveOccurred())

		probe := checkup.NewDockerCLIProbe(set)
		version, err := probe.DaemonVersion(context.Background())
		if err != nil {
			Skip("docker daemon not reachable: " + err.Error())
		}
		Expect(version).ToNot(BeEmpty())
	})
})
