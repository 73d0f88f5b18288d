package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractProfile_Years(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"5 years of experience in backend", 5},
		{"10+ years building APIs", 10},
		{"Experience: 3 years", 3},
		{"7 yrs professional experience", 7},
		{"1 year of experience", 1},
		{"3 years of Python experience and 8+ years overall", 8},
		{"Founded 100+ years ago", 0},
		{"Worked on it for 2 years", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractProfile(tt.in).Years)
		})
	}
}

func TestExtractProfile_Degree(t *testing.T) {
	tests := []struct {
		in   string
		want Degree
	}{
		{"B.S. in Computer Science", DegreeBachelor},
		{"Bachelor of Science", DegreeBachelor},
		{"BA in Economics", DegreeBachelor},
		{"MSc Data Science; BSc Physics", DegreeMaster},
		{"Master’s in Statistics", DegreeMaster},
		{"M.S. Computer Science, 2018", DegreeMaster},
		{"MBA, 2019", DegreeMaster},
		{"Ph.D. in Machine Learning", DegreeDoctorate},
		{"PhD candidate", DegreeDoctorate},
		{"Associate's degree in networking", DegreeAssociate},
		{"Certified Scrum Master, mastered Kubernetes", DegreeNone},
		{"Associate Engineer at Acme", DegreeNone},
		{"Experience with MS Excel", DegreeNone},
		{"Worked at IBM", DegreeNone},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractProfile(tt.in).Degree)
		})
	}
}

func TestProfile_Display(t *testing.T) {
	assert.Equal(t, "", Profile{}.Experience())
	assert.Equal(t, "", Profile{}.Education())
	assert.Equal(t, "1 year", Profile{Years: 1}.Experience())
	assert.Equal(t, "6 years", Profile{Years: 6}.Experience())
	assert.Equal(t, "Bachelor's Degree", Profile{Degree: DegreeBachelor}.Education())
	assert.Equal(t, "Doctorate", Profile{Degree: DegreeDoctorate}.Education())
}
