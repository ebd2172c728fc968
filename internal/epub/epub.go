// Package epub extracts plain text from EPUB archives: spine-ordered
// content documents, HTML stripped, whitespace collapsed, chapters joined
// with paragraph breaks.
package epub

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var multiSpace = regexp.MustCompile(`\s{2,}`)

type container struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type packageDoc struct {
	Manifest struct {
		Items []struct {
			ID   string `xml:"id,attr"`
			Href string `xml:"href,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// ExtractText converts one EPUB file to clean text. Content documents are
// read in spine order when the package metadata parses; otherwise every
// (x)html entry is taken in archive order.
func ExtractText(epubPath string) (string, error) {
	zr, err := zip.OpenReader(epubPath)
	if err != nil {
		return "", fmt.Errorf("failed to open epub %s: %w", epubPath, err)
	}
	defer zr.Close()

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	docs := spineDocuments(files)
	if len(docs) == 0 {
		for _, f := range zr.File {
			if isContentDoc(f.Name) {
				docs = append(docs, f)
			}
		}
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("%s contains no content documents", epubPath)
	}

	var chapters []string
	for _, f := range docs {
		text, err := readDocumentText(f)
		if err != nil {
			continue
		}
		if clean := strings.TrimSpace(multiSpace.ReplaceAllString(text, " ")); clean != "" {
			chapters = append(chapters, clean)
		}
	}

	return strings.Join(chapters, "\n\n"), nil
}

// spineDocuments resolves the OPF spine into ordered content files. Returns
// nil when the package metadata is missing or malformed.
func spineDocuments(files map[string]*zip.File) []*zip.File {
	cont, ok := files["META-INF/container.xml"]
	if !ok {
		return nil
	}
	var c container
	if err := decodeXML(cont, &c); err != nil || len(c.Rootfiles) == 0 {
		return nil
	}

	opfPath := c.Rootfiles[0].FullPath
	opf, ok := files[opfPath]
	if !ok {
		return nil
	}
	var pkg packageDoc
	if err := decodeXML(opf, &pkg); err != nil {
		return nil
	}

	hrefs := make(map[string]string, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		hrefs[item.ID] = item.Href
	}

	base := path.Dir(opfPath)
	var docs []*zip.File
	for _, ref := range pkg.Spine.ItemRefs {
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		name := href
		if base != "." {
			name = path.Join(base, href)
		}
		if f, ok := files[name]; ok && isContentDoc(name) {
			docs = append(docs, f)
		}
	}
	return docs
}

func isContentDoc(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".xhtml", ".html", ".htm":
		return true
	}
	return false
}

func decodeXML(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

// readDocumentText strips the markup from one content document, skipping
// script and style subtrees.
func readDocumentText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return StripHTML(rc)
}

// StripHTML extracts the visible text from an HTML stream.
func StripHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return sb.String(), nil
}
