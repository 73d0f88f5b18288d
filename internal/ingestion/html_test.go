package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, LooksLikeHTML("<p>Python developer</p>"))
	assert.True(t, LooksLikeHTML("Requirements:<br/>Go"))
	assert.True(t, LooksLikeHTML(`<DIV class="x">Go</DIV>`))
	assert.False(t, LooksLikeHTML("Experience with C++ <3 and x < y"))
	assert.False(t, LooksLikeHTML("Plain text job description"))
}

func TestHTMLToText_UsesJobDescriptionContainer(t *testing.T) {
	html := `<html><body>
		<nav>Home Jobs Careers</nav>
		<div class="job-description">
			<h2>Requirements</h2>
			<ul><li>Python</li><li>Django</li></ul>
			<p>Nice to have: <strong>AWS</strong></p>
		</div>
		<footer>Copyright</footer>
		<script>var tracking = "kubernetes";</script>
	</body></html>`

	text, err := HTMLToText(html)
	require.NoError(t, err)

	assert.Contains(t, text, "Requirements")
	assert.Contains(t, text, "Python\n\nDjango")
	assert.Contains(t, text, "Nice to have: AWS")
	assert.NotContains(t, text, "Home Jobs")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "kubernetes")
}

func TestHTMLToText_FallsBackToBody(t *testing.T) {
	text, err := HTMLToText("<p>Go</p><p>Rust</p>")
	require.NoError(t, err)
	assert.Equal(t, "Go\n\nRust", text)
}

func TestJobDescriptionText(t *testing.T) {
	assert.Equal(t, "Python and Flask", JobDescriptionText("  Python   and Flask "))
	assert.Equal(t, "Python\n\nFlask", JobDescriptionText("<ul><li>Python</li><li>Flask</li></ul>"))
}
