package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/header"
	"github.com/celestiaorg/celestia-light/header/headertest"
)

func TestValidate(t *testing.T) {
	suite := headertest.NewTestSuite(t)
	eh := suite.Head()
	require.NoError(t, eh.Validate())

	tampered := *eh
	tampered.DataHash = make(header.Hash, 32)
	assert.Error(t, tampered.Validate())

	tampered = *eh
	tampered.DAH = nil
	assert.Error(t, tampered.Validate())

	tampered = *eh
	tampered.ChainID = ""
	assert.Error(t, tampered.Validate())
}

func TestVerifyAdjacent(t *testing.T) {
	suite := headertest.NewTestSuite(t)
	trusted := suite.Head()
	untrusted := suite.NextHeader()

	assert.NoError(t, trusted.Verify(untrusted))

	// tampered hash chain must be caught
	tampered := *untrusted
	tampered.LastHeaderHash = make(header.Hash, 32)
	var verErr *header.VerifyError
	assert.ErrorAs(t, trusted.Verify(&tampered), &verErr)

	// validator transition mismatch as well
	tampered = *untrusted
	tampered.ValidatorsHash = make(header.Hash, 32)
	assert.ErrorAs(t, trusted.Verify(&tampered), &verErr)
}

func TestVerifyNonAdjacent(t *testing.T) {
	suite := headertest.NewTestSuite(t)
	trusted := suite.Head()
	suite.GenExtendedHeaders(5)
	untrusted := suite.NextHeader()

	// non-adjacent headers pass with subjective trust
	assert.NoError(t, trusted.Verify(untrusted))

	// but known heights are rejected
	var verErr *header.VerifyError
	assert.ErrorAs(t, untrusted.Verify(trusted), &verErr)

	// and so are foreign chains
	tampered := *untrusted
	tampered.ChainID = "public"
	assert.ErrorAs(t, trusted.Verify(&tampered), &verErr)
}

func TestHashStability(t *testing.T) {
	suite := headertest.NewTestSuite(t)
	eh := suite.Head()

	bin, err := header.MarshalExtendedHeader(eh)
	require.NoError(t, err)
	out, err := header.UnmarshalExtendedHeader(bin)
	require.NoError(t, err)

	assert.Equal(t, eh.Hash(), out.Hash())
}
