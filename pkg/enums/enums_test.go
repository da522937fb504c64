package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrips(t *testing.T) {
	status, err := ParseProspectStatus("proposal_sent")
	require.NoError(t, err)
	assert.Equal(t, ProspectStatusProposalSent, status)
	assert.True(t, status.IsValid())

	_, err = ParseProspectStatus("closed")
	require.Error(t, err)

	doc, err := ParseDocumentStatus("not_sent")
	require.NoError(t, err)
	assert.Equal(t, "not_sent", doc.String())

	assert.False(t, ArticleStatus("archived").IsValid())
	assert.True(t, ReviewTypePostCall.IsValid())
}

func TestAllTemplateTypesIsACopy(t *testing.T) {
	all := AllTemplateTypes()
	require.Len(t, all, 9)
	assert.Equal(t, TemplateTypeContractorContract, all[0])
	assert.Equal(t, TemplateTypeTermination, all[8])

	all[0] = "mutated"
	assert.Equal(t, TemplateTypeContractorContract, AllTemplateTypes()[0])
}

func TestParseIsLenientAboutCaseAndSpace(t *testing.T) {
	role, err := ParseActorRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, ActorRoleAdmin, role)

	_, err = ParsePartnerType("venue_owner")
	require.EqualError(t, err, `invalid partner type "venue_owner"`)
}
