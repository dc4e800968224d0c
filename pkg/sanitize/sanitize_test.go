package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "Acme Language School", Text("  Acme   Language <b>School</b> "))
	assert.Equal(t, "Tom & Jerry", Text("Tom &amp; Jerry"))
	assert.Equal(t, "", Text("<script>alert(1)</script>"))
	assert.Equal(t, "", Text(""))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", Email("  A@X.com "))
}
