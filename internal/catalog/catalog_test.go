package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupImage_Order(t *testing.T) {
	t.Parallel()
	c := Default()

	tests := []struct {
		input   string
		wantURL string
		wantOK  bool
	}{
		{"show me a serve", "/static/images/serve.jpg", true},
		{"team spike", "/static/images/team.jpg", true}, // team precedes spike
		{"what does the ball look like", "/static/images/ball.jpg", true},
		{"courtside seats", "/static/images/court.jpg", true},
		{"show me something", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			img, ok := c.LookupImage(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantURL, img.URL)
		})
	}
}

func TestLookupVideo_InsertionOrder(t *testing.T) {
	t.Parallel()
	c := Default()

	tests := []struct {
		input  string
		wantID string
	}{
		{"what are the rules", "how_to_play"},
		{"history and rules", "how_to_play"}, // first entry wins regardless of position in input
		{"where did takraw start", "history"},
		{"sea games highlight", "classic"},
		{"malaysia vs thailand", "recent_match"},
		{"i sprained my ankle", "ankle_recovery"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			v, ok := c.LookupVideo(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.wantID, v.ID)
		})
	}

	_, ok := c.LookupVideo("tell me a joke")
	assert.False(t, ok)
}

func TestVideoEntry_IFrame(t *testing.T) {
	t.Parallel()
	v := VideoEntry{EmbedURL: "https://www.youtube.com/embed/N-ZInLq317c", Title: "How to Play Sepak Takraw"}
	want := `<div class="video-container"><iframe src="https://www.youtube.com/embed/N-ZInLq317c" ` +
		`title="How to Play Sepak Takraw" allow="accelerometer; autoplay; clipboard-write; encrypted-media; ` +
		`gyroscope; picture-in-picture" allowfullscreen></iframe></div>`
	assert.Equal(t, want, v.IFrame())

	quoted := VideoEntry{EmbedURL: "https://x", Title: `A "quoted" <title>`}
	assert.Contains(t, quoted.IFrame(), `title="A &#34;quoted&#34; &lt;title&gt;"`)
}

func TestDefault_Valid(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Default().Validate())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		c, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	})

	t.Run("partial override", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
videos:
  - id: drills
    triggers: ["Drills", "practice"]
    reply: "Try these drills:"
    embed_url: https://www.youtube.com/embed/abc
    title: Drills
`), 0o600))

		c, err := Load(path)
		require.NoError(t, err)
		require.Len(t, c.Videos, 1)
		assert.Equal(t, []string{"drills", "practice"}, c.Videos[0].Triggers)
		assert.Len(t, c.Images, 5, "images keep their defaults")
		assert.Equal(t, "/static/images/general.jpg", c.Generic.URL)
	})

	t.Run("invalid entry", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("videos:\n  - id: x\n"), 0o600))
		_, err := Load(path)
		assert.ErrorContains(t, err, "at least one trigger")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
