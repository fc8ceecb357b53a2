package reveal

import (
	"testing"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRevealSuite(t *testing.T) {
	RegisterFailHandler(g.Fail)
	g.RunSpecs(t, "Reveal Suite")
}
