package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/margo/internal/adapters/linear"
)

func TestRenderer_Run(t *testing.T) {
	var buf bytes.Buffer
	r := linear.NewRenderer(&buf)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	r.OnPlan([]string{"libc@0.2.43"}, []string{"serde@1.0.80", "foo@1.0.0"})

	r.OnTaskStart("s1", "serde@1.0.80", start)
	r.OnTaskStart("s2", "foo@1.0.0", start)
	r.OnTaskComplete("s2", start.Add(40*time.Millisecond), errors.New("checksum_mismatch"))
	r.OnTaskComplete("s1", start.Add(1234567*time.Microsecond), nil)

	g := goldie.New(t)
	g.Assert(t, "run", buf.Bytes())
}

func TestRenderer_NothingToFetch(t *testing.T) {
	var buf bytes.Buffer
	r := linear.NewRenderer(&buf)

	r.OnPlan([]string{"libc@0.2.43"}, nil)
	assert.Empty(t, buf.String())
}

func TestRenderer_UnknownSpan(t *testing.T) {
	var buf bytes.Buffer
	r := linear.NewRenderer(&buf)

	r.OnTaskComplete("missing", time.Now(), nil)
	assert.Empty(t, buf.String())
}

func TestRenderer_NilWriter(t *testing.T) {
	assert.NotNil(t, linear.NewRenderer(nil))
}
