package handlers

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/volplan/internal/plan"
	"github.com/imamik/volplan/internal/util/prerequisites"
)

func TestDoctor(t *testing.T) {
	fakeNode(t, plan.StaticRegistry{}, nil)
	var binary string
	checkAllPrereqs = func(lvmBinary string) *prerequisites.CheckResults {
		binary = lvmBinary
		return &prerequisites.CheckResults{Results: []prerequisites.CheckResult{
			{Tool: prerequisites.Tool{Name: lvmBinary, Required: true}, Found: true, Version: "2.03.16"},
		}}
	}
	var out bytes.Buffer

	require.NoError(t, Doctor(context.Background(), "", &out))
	assert.Equal(t, "/sbin/lvm", binary)
	assert.Contains(t, out.String(), "[OK] /sbin/lvm 2.03.16")
}

func TestDoctor_MissingTool(t *testing.T) {
	fakeNode(t, plan.StaticRegistry{}, nil)
	mkfs := prerequisites.Tool{Name: "mkfs", Required: true, Package: "util-linux"}
	checkAllPrereqs = func(string) *prerequisites.CheckResults {
		return &prerequisites.CheckResults{
			Results: []prerequisites.CheckResult{{Tool: mkfs}},
			Missing: []prerequisites.Tool{mkfs},
		}
	}
	var out bytes.Buffer

	err := Doctor(context.Background(), "", &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "[!!] mkfs (install util-linux)")
}
