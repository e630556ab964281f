package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html><html><head></head><body>
<div class="chart-container"><canvas id="tradingChart"></canvas></div>
<img class="perception-img hero" alt="a"><img class="perception-img" alt="b">
<span id="risk-value" style="color: red;">1%</span>
</body></html>`

func TestGetElementByID(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)

	el, ok := doc.GetElementByID("tradingChart")
	require.True(t, ok)
	assert.Equal(t, "canvas", el.Tag())

	parent, ok := el.Parent()
	require.True(t, ok)
	assert.True(t, parent.HasClass("chart-container"))

	_, ok = doc.GetElementByID("missing")
	assert.False(t, ok)
}

func TestGetElementsByClassName(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)

	assert.Len(t, doc.GetElementsByClassName("perception-img"), 2)
	assert.Len(t, doc.GetElementsByClassName("hero"), 1)
	assert.Empty(t, doc.GetElementsByClassName("reality-img"))
}

func TestStyleAndText(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)

	el, ok := doc.GetElementByID("risk-value")
	require.True(t, ok)
	assert.Equal(t, "red", el.Style("color"))

	el.SetStyle("color", "#4caf50")
	el.SetStyle("left", "20%")
	el.SetText("2%")

	assert.Equal(t, "#4caf50", el.Style("color"))
	assert.Equal(t, "20%", el.Style("left"))
	assert.Equal(t, "2%", el.Text())
	style, _ := el.Attr("style")
	assert.Equal(t, "color: #4caf50; left: 20%;", style)
}

func TestCreateAndAppend(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)

	canvas, _ := doc.GetElementByID("tradingChart")
	parent, _ := canvas.Parent()

	div := doc.CreateElement("div")
	div.SetAttr("class", "chart-annotation buy")
	div.SetText("Buy")
	parent.AppendChild(div)

	assert.Len(t, doc.GetElementsByClassName("chart-annotation"), 1)
	assert.Contains(t, doc.String(), `<div class="chart-annotation buy">Buy</div>`)
}

func TestRemoveAttr(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)

	el, _ := doc.GetElementByID("risk-value")
	el.RemoveAttr("style")
	_, ok := el.Attr("style")
	assert.False(t, ok)
}
