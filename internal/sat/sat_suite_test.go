package sat_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSAT(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "sat core suite")
}
