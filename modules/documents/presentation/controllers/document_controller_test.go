package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ati-intranet/portal/modules/documents"
	"github.com/ati-intranet/portal/modules/documents/domain/entities/document"
	"github.com/ati-intranet/portal/pkg/itf"
)

var library = []document.Document{
	{ID: "1", Name: "Leave Policy", Type: "policy", Category: "HR", Description: "How leave works", FileSize: 250_000, CreatedAt: "2024-02-01T10:00:00.000Z"},
	{ID: "2", Name: "Reimbursement", Type: "form", Category: "Finance", FileSize: 900},
}

func TestDocumentController_List(t *testing.T) {
	suite := itf.HTTP(t, documents.NewModule()).AsRole("Employee")
	suite.Upstream.JSON(http.MethodGet, "/documents", http.StatusOK, library)

	doc := suite.GET("/documents").Expect(t).Status(http.StatusOK).HTML()
	assert.Equal(t, "", suite.Upstream.Last(t, http.MethodGet, "/documents").Query)

	cards := doc.Find(".document-card")
	require.Equal(t, 2, cards.Length())
	first := cards.First()
	assert.Equal(t, "Leave Policy", first.Find(".name").Text())
	assert.Equal(t, "📋", first.Find(".icon").Text())
	assert.Equal(t, "HR", first.Find(".category").Text())
	assert.Equal(t, "244.1 KB", first.Find(".size").Text())
	assert.Equal(t, "2/1/2024", first.Find(".created").Text())
	assert.Equal(t, "900 B", cards.Eq(1).Find(".size").Text())
	assert.Equal(t, "📝", cards.Eq(1).Find(".icon").Text())

	assert.True(t, doc.Find(`#document-filters a[data-type="all"]`).HasClass("active"))
	assert.Equal(t, "/documents?type=handbook", doc.Find(`#document-filters a[data-type="handbook"]`).AttrOr("href", ""))
}

func TestDocumentController_FilterByType(t *testing.T) {
	suite := itf.HTTP(t, documents.NewModule()).AsRole("Employee")
	suite.Upstream.JSON(http.MethodGet, "/documents", http.StatusOK, library[:1])

	doc := suite.GET("/documents?type=policy").Expect(t).Status(http.StatusOK).HTML()
	assert.Equal(t, "type=policy", suite.Upstream.Last(t, http.MethodGet, "/documents").Query)
	assert.True(t, doc.Find(`#document-filters a[data-type="policy"]`).HasClass("active"))
	assert.False(t, doc.Find(`#document-filters a[data-type="all"]`).HasClass("active"))

	suite.GET("/documents?type=memo").Expect(t).Status(http.StatusOK)
	assert.Equal(t, "", suite.Upstream.Last(t, http.MethodGet, "/documents").Query)
}

func TestDocumentController_Empty(t *testing.T) {
	suite := itf.HTTP(t, documents.NewModule()).AsRole("Employee")
	suite.Upstream.JSON(http.MethodGet, "/documents", http.StatusOK, map[string]string{"message": "none"})

	suite.GET("/documents?type=form").Expect(t).Status(http.StatusOK).Contains("No documents found")
}
