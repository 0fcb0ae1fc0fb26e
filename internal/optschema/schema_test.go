package optschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ccdrv/ccdrv/internal/optschema"
)

func TestDefaultTable_LookupFindsKnownEntries(t *testing.T) {
	table := optschema.DefaultTable()

	entry, ok := table.Lookup(optschema.NameOutput)
	assert.True(t, ok)
	assert.Equal(t, optschema.Separate, entry.Shape)
	assert.True(t, entry.IsNoForward)
}

func TestDefaultTable_LookupMissesUnknownName(t *testing.T) {
	table := optschema.DefaultTable()

	_, ok := table.Lookup("-not-a-real-flag")
	assert.False(t, ok)
}

func TestDefaultTable_PreservesDeclarationOrder(t *testing.T) {
	table := optschema.DefaultTable()

	entries := table.Entries()
	assert.Equal(t, optschema.NameOutput, entries[0].Name)
	assert.Equal(t, optschema.NameCompileOnly, entries[1].Name)
}

func TestDefaultTable_LinkerInputFlagsMarked(t *testing.T) {
	table := optschema.DefaultTable()

	filelist, ok := table.Lookup(optschema.NameFilelist)
	assert.True(t, ok)
	assert.True(t, filelist.IsLinkerInput)

	lib, ok := table.Lookup(optschema.NameLinkLib)
	assert.True(t, ok)
	assert.True(t, lib.IsLinkerInput)
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "Flag", optschema.Flag.String())
	assert.Equal(t, "JoinedAndSeparate", optschema.JoinedAndSeparate.String())
	assert.Equal(t, "Input", optschema.Input.String())
	assert.Equal(t, "Unknown", optschema.Shape(99).String())
}

func TestNewTable_CopiesEntriesIndependently(t *testing.T) {
	entries := []optschema.Option{{Name: "-x", Shape: optschema.Flag}}
	table := optschema.NewTable(entries...)

	entries[0].Name = "-mutated"

	got, ok := table.Lookup("-x")
	assert.True(t, ok)
	assert.Equal(t, "-x", got.Name)
}
