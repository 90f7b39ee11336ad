package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSample() TrainingSample {
	return TrainingSample{
		Messages: []Message{
			{Role: RoleSystem, Content: "Du er Konto AI."},
			{Role: RoleUser, Content: "Hva betyr 'Saklig virkeområde'?"},
			{Role: RoleAssistant, Content: "Loven gjelder omsetning av varer og tjenester."},
		},
		Metadata: SampleMetadata{
			Domain:    "tax",
			Task:      TaskGlossaryDefine,
			SourceIDs: []string{"mva_law_2009_PARAGRAF_1-1"},
			Locale:    "nb-NO",
		},
	}
}

func TestTrainingSample_Validate(t *testing.T) {
	require.NoError(t, validSample().Validate())
}

func TestTrainingSample_Validate_TooFewMessages(t *testing.T) {
	s := validSample()
	s.Messages = s.Messages[:1]
	assert.ErrorIs(t, s.Validate(), ErrInvalidRecord)
}

func TestTrainingSample_Validate_SystemMustComeFirst(t *testing.T) {
	s := validSample()
	s.Messages[0].Role = RoleUser
	assert.ErrorIs(t, s.Validate(), ErrInvalidRecord)
}

func TestTrainingSample_Validate_EmptyContent(t *testing.T) {
	s := validSample()
	s.Messages[2].Content = ""
	assert.ErrorIs(t, s.Validate(), ErrInvalidRecord)
}

func TestTrainingSample_Validate_UnknownRole(t *testing.T) {
	s := validSample()
	s.Messages[1].Role = "tool"
	assert.ErrorIs(t, s.Validate(), ErrInvalidRecord)
}

func TestTrainingSample_Validate_RequiresSourceIDs(t *testing.T) {
	s := validSample()
	s.Metadata.SourceIDs = nil
	assert.ErrorIs(t, s.Validate(), ErrInvalidRecord)
}

func TestTrainingSample_Validate_RequiresDomainAndTask(t *testing.T) {
	s := validSample()
	s.Metadata.Domain = ""
	assert.ErrorIs(t, s.Validate(), ErrInvalidRecord)

	s = validSample()
	s.Metadata.Task = ""
	assert.ErrorIs(t, s.Validate(), ErrInvalidRecord)
}
