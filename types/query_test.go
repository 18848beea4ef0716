package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatParamsValidate(t *testing.T) {
	params := &ChatParams{Prompt: "What is BOI?"}
	assert.Nil(t, params.Validate())

	empty := &ChatParams{}
	errs := empty.Validate()
	assert.Contains(t, errs, "Prompt")
}
