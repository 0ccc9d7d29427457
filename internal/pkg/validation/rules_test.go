package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"jane@student.fulafia.edu.ng",
		"amina.musa+esp@gmail.com",
		"a@b.co",
	}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), email)
	}

	invalid := []string{
		"",
		"jane@",
		"@fulafia.edu.ng",
		"jane fulafia.edu.ng",
		"jane@fulafia",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), email)
	}
}

func TestMatricPattern(t *testing.T) {
	valid := []string{
		"FUL/2021/0042",
		"ful/2019/123456",
		"CSC/2023/999",
	}
	for _, matric := range valid {
		assert.True(t, CompiledPatterns.Matric.MatchString(matric), matric)
	}

	invalid := []string{
		"",
		"20210042",
		"FUL-2021-0042",
		"F/2021/0042",
		"FUL/21/0042",
		"FUL/2021/42",
	}
	for _, matric := range invalid {
		assert.False(t, CompiledPatterns.Matric.MatchString(matric), matric)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@fulafia.edu.ng", NormalizeEmail("  Jane@FULafia.edu.NG "))
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Amina Musa"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName("  "))
	assert.False(t, ValidName("A"))
}
