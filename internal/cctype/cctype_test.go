package cctype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ccdrv/ccdrv/internal/cctype"
)

func TestClassifyBySuffix_KnownSuffixes(t *testing.T) {
	assert.Equal(t, cctype.CSource, cctype.ClassifyBySuffix("foo.c"))
	assert.Equal(t, cctype.CXXSource, cctype.ClassifyBySuffix("foo.cpp"))
	assert.Equal(t, cctype.AssemblyNoCPP, cctype.ClassifyBySuffix("foo.s"))
	assert.Equal(t, cctype.AssemblyWithCPP, cctype.ClassifyBySuffix("foo.S"))
}

func TestClassifyBySuffix_UnknownSuffixFallsBackToObject(t *testing.T) {
	assert.Equal(t, cctype.Object, cctype.ClassifyBySuffix("foo.xyz"))
	assert.Equal(t, cctype.Object, cctype.ClassifyBySuffix("foo"))
}

func TestClassifyBySuffix_IgnoresDirectoryDots(t *testing.T) {
	assert.Equal(t, cctype.CSource, cctype.ClassifyBySuffix("/tmp/foo.bar/baz.c"))
	assert.Equal(t, cctype.Object, cctype.ClassifyBySuffix("/tmp/foo.bar/baz"))
}

func TestClassifyBySpecifier_KnownLanguage(t *testing.T) {
	typ, usesSuffix, ok := cctype.ClassifyBySpecifier("c++")
	assert.True(t, ok)
	assert.False(t, usesSuffix)
	assert.Equal(t, cctype.CXXSource, typ)
}

func TestClassifyBySpecifier_NoneDefersToSuffix(t *testing.T) {
	_, usesSuffix, ok := cctype.ClassifyBySpecifier("none")
	assert.True(t, ok)
	assert.True(t, usesSuffix)
}

func TestClassifyBySpecifier_UnrecognizedFallsBackToObject(t *testing.T) {
	typ, usesSuffix, ok := cctype.ClassifyBySpecifier("not-a-language")
	assert.False(t, ok)
	assert.False(t, usesSuffix)
	assert.Equal(t, cctype.Object, typ)
}

func TestHasPreprocessSource(t *testing.T) {
	assert.True(t, cctype.CSource.HasPreprocessSource())
	assert.False(t, cctype.CPreprocessed.HasPreprocessSource())
	assert.False(t, cctype.Object.HasPreprocessSource())
}

func TestByName_FindsObjectAndRejectsUnknownName(t *testing.T) {
	typ, ok := cctype.ByName(cctype.Object.Name)
	assert.True(t, ok)
	assert.Equal(t, cctype.Object, typ)

	_, ok = cctype.ByName("does-not-exist")
	assert.False(t, ok)
}
