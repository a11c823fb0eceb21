package recordscout_test

import (
	"testing"

	"github.com/fwojciec/recordscout"
	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestCatalog_SearchQuery(t *testing.T) {
	t.Parallel()

	c := recordscout.NewCatalog("discogs.com")

	tests := []struct {
		name string
		work recordscout.IdentifiedWork
		want string
	}{
		{
			name: "artist and title",
			work: recordscout.IdentifiedWork{Artist: strptr("Boards of Canada"), Title: strptr("Geogaddi")},
			want: "site:discogs.com Boards of Canada Geogaddi",
		},
		{
			name: "artist only",
			work: recordscout.IdentifiedWork{Artist: strptr(" Autechre ")},
			want: "site:discogs.com Autechre",
		},
		{
			name: "title only",
			work: recordscout.IdentifiedWork{Title: strptr("Tri Repetae")},
			want: "site:discogs.com Tri Repetae",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, c.SearchQuery(&tt.work))
		})
	}
}

func TestCatalog_FindURL(t *testing.T) {
	t.Parallel()

	t.Run("returns first match", func(t *testing.T) {
		t.Parallel()

		c := recordscout.NewCatalog("discogs.com")
		html := `<a href="/url?q=https://www.discogs.com/release/123-Foo&amp;sa=U">x</a>
			<a href="https://discogs.com/master/9">y</a>`

		assert.Equal(t, "https://www.discogs.com/release/123-Foo&amp;sa=U", c.FindURL(html))
	})

	t.Run("stops at quote, whitespace and angle bracket", func(t *testing.T) {
		t.Parallel()

		c := recordscout.NewCatalog("catalogsite.example")

		assert.Equal(t, "http://catalogsite.example/release/1", c.FindURL(`x http://catalogsite.example/release/1"rest`))
		assert.Equal(t, "http://catalogsite.example/release/2", c.FindURL(`http://catalogsite.example/release/2 rest`))
		assert.Equal(t, "http://catalogsite.example/release/3", c.FindURL(`<b>http://catalogsite.example/release/3</b>`))
	})

	t.Run("returns empty string without match", func(t *testing.T) {
		t.Parallel()

		c := recordscout.NewCatalog("discogs.com")

		assert.Empty(t, c.FindURL(`<a href="https://example.com/discogs.com/x">no</a>`))
	})

	t.Run("does not match lookalike domains", func(t *testing.T) {
		t.Parallel()

		c := recordscout.NewCatalog("discogs.com")

		assert.Empty(t, c.FindURL(`https://discogsxcom/release/1`))
	})

	t.Run("normalizes domain", func(t *testing.T) {
		t.Parallel()

		c := recordscout.NewCatalog(" WWW.Discogs.com ")

		assert.Equal(t, "discogs.com", c.Domain)
	})
}

func TestCatalog_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Discogs", recordscout.NewCatalog("www.Discogs.com").Name())
	assert.Equal(t, "Catalogsite", recordscout.NewCatalog("catalogsite.example").Name())
}
