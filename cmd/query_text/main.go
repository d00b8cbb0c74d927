package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pyhub-apps/pdfplumber-golang/pkg/page"
	"github.com/pyhub-apps/pdfplumber-golang/pkg/textpage"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: query_text <pdf_file> <search_term>")
		os.Exit(1)
	}

	pdfPath := os.Args[1]
	term := os.Args[2]

	fmt.Printf("Opening PDF: %s\n", pdfPath)
	doc, err := page.Open(pdfPath)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	fmt.Printf("Document has %d pages\n\n", doc.PageCount())

	for i := 0; i < doc.PageCount(); i++ {
		pg, err := doc.GetPage(i)
		if err != nil {
			log.Printf("Failed to get page %d: %v", i+1, err)
			continue
		}

		results, err := pg.Search([]string{term}, textpage.MatchContains, true, false)
		if err != nil {
			log.Printf("Search failed on page %d: %v", i+1, err)
			continue
		}
		if len(results) == 0 {
			continue
		}

		fmt.Printf("=== Page %d: %d match(es) for %q ===\n", pg.GetPageNumber(), len(results), term)
		for _, r := range results {
			fmt.Printf("  rects: %v\n", r.Rects)

			words := r.Words
			if len(words) == 0 {
				continue
			}
			first := words[0]
			if err := pg.StartSelection(first.XMin/pg.GetWidth(), first.Base/pg.GetHeight()); err != nil {
				log.Printf("StartSelection: %v", err)
				continue
			}
			last := words[len(words)-1]
			if _, err := pg.MoveSelectionTo(last.XMax/pg.GetWidth(), last.Base/pg.GetHeight()); err != nil {
				log.Printf("MoveSelectionTo: %v", err)
				continue
			}
			selected, err := pg.SelectedText(true)
			if err != nil {
				log.Printf("SelectedText: %v", err)
				continue
			}
			fmt.Printf("  selection over match: %q\n", selected)
		}
	}
}
