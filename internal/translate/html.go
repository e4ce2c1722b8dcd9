package translate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Text under these elements is markup plumbing rather than document prose.
var skippedParentElements = map[string]struct{}{
	"style":  {},
	"script": {},
	"head":   {},
	"title":  {},
	"meta":   {},
}

// processHTMLFile translates the prose text nodes of the HTML document at
// inputPath and writes the rewritten document to outputPath.
func processHTMLFile(ctx context.Context, translator Translator, inputPath string, outputPath string) error {
	inputFile, openError := os.Open(inputPath)
	if openError != nil {
		return openError
	}
	document, parseError := html.Parse(inputFile)
	closeError := inputFile.Close()
	if parseError != nil {
		return fmt.Errorf("parse %s: %w", inputPath, parseError)
	}
	if closeError != nil {
		return closeError
	}
	if translateError := translateTextNodes(ctx, translator, document); translateError != nil {
		return translateError
	}
	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return createError
	}
	if renderError := html.Render(outputFile, document); renderError != nil {
		outputFile.Close()
		return fmt.Errorf("render %s: %w", outputPath, renderError)
	}
	return outputFile.Close()
}

// translateTextNodes walks the parsed document depth-first and replaces each
// translatable text node with its translation. The first translation failure
// stops the walk.
func translateTextNodes(ctx context.Context, translator Translator, document *html.Node) error {
	var translateError error
	var traverse func(node *html.Node)
	traverse = func(node *html.Node) {
		if translateError != nil {
			return
		}
		if node.Type == html.TextNode && isTranslatableParent(node.Parent) && strings.TrimSpace(node.Data) != "" {
			translatedText, nodeError := translateText(ctx, translator, node.Data)
			if nodeError != nil {
				translateError = nodeError
				return
			}
			node.Data = translatedText
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			traverse(child)
		}
	}
	traverse(document)
	return translateError
}

// isTranslatableParent reports whether text directly under parent counts as
// document prose. Text inside style, script, head, title, and meta elements
// stays untouched, as does stray text hanging off the document root.
func isTranslatableParent(parent *html.Node) bool {
	if parent == nil || parent.Type == html.DocumentNode {
		return false
	}
	if parent.Type != html.ElementNode {
		return true
	}
	_, skipped := skippedParentElements[parent.Data]
	return !skipped
}
