package html

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

const page = `<!DOCTYPE html>
<html lang="de">
<head>
  <title> Test Page </title>
  <style>p { color: red }</style>
  <style media="print">p { color: black }</style>
  <link rel="stylesheet" href="site.css">
</head>
<body><p>Hello <b>World</b></p></body>
</html>`

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.layout")
	defer teardown()
	//
	doc, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "Test Page", doc.Title)
	assert.Equal(t, "de", doc.Lang)
	require.Len(t, doc.StyleSheets, 2, "linked sheets need a base directory")
	assert.Equal(t, "p { color: red }", doc.StyleSheets[0])
	assert.Equal(t, "@media print {p { color: black }}", doc.StyleSheets[1])
	body := doc.Body()
	require.NotNil(t, body)
	assert.Equal(t, "Hello World", strings.TrimSpace(TextContent(body)), "body keeps trailing white space")
	p := Find(body, atom.P)
	require.NotNil(t, p)
	assert.Equal(t, "Hello World", TextContent(p))
	assert.Equal(t, "", Attr(p, "class"))
}

func TestParseFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.layout")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.css"), []byte("body { margin: 0 }"), 0644))
	doc, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, doc.StyleSheets, 3)
	assert.Equal(t, "body { margin: 0 }", doc.StyleSheets[2])
	assert.Equal(t, dir, doc.BaseDir)
	//
	_, err = ParseFile(filepath.Join(dir, "missing.html"))
	assert.Equal(t, core.EMISSING, core.Code(err))
}
