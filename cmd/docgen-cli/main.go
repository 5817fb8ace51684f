package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"

	docgen "github.com/goliatone/go-docgen"
	"github.com/goliatone/go-docgen/pkg/signature/gormstore"
	"github.com/goliatone/go-docgen/pkg/template"
	"github.com/goliatone/go-docgen/pkg/vars"
)

func main() {
	templatePath := flag.String("template", "", "HTML template file to render")
	varsPath := flag.String("vars", "", "YAML or JSON file with template variables")
	documentID := flag.String("document", "", "document id for signature lookups")
	chromeName := flag.String("chrome", "", "page chrome to wrap the document in (standard, premium)")
	title := flag.String("title", "", "document title used by the chrome")
	output := flag.String("output", "", "output file (stdout if empty)")
	dsn := flag.String("dsn", "", "postgres DSN for the signature store")
	prompt := flag.Bool("prompt", false, "prompt for template variables missing from the vars file")
	flag.Parse()

	if *templatePath == "" {
		log.Fatal("missing required -template flag")
	}

	raw, err := os.ReadFile(*templatePath)
	if err != nil {
		log.Fatalf("Failed to read template: %v", err)
	}

	bag, err := loadVariables(*varsPath)
	if err != nil {
		log.Fatalf("Failed to load variables: %v", err)
	}

	if *prompt {
		answers, err := promptMissing(string(raw), bag)
		if err != nil {
			log.Fatalf("Failed to collect variables: %v", err)
		}
		bag = vars.Merge(bag, answers)
	}

	var options []docgen.Option
	if *dsn != "" {
		store, err := gormstore.Open(*dsn)
		if err != nil {
			log.Fatalf("Failed to open signature store: %v", err)
		}
		options = append(options, docgen.WithStore(store))
	}

	gen := docgen.New(options...)
	outputHTML, err := gen.Generate(context.Background(), docgen.Request{
		Template:   string(raw),
		Variables:  bag,
		DocumentID: *documentID,
		Chrome:     *chromeName,
		Title:      *title,
	})
	if err != nil {
		log.Fatalf("Failed to generate document: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(outputHTML), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Document written to %s\n", *output)
	} else {
		fmt.Println(outputHTML)
	}
}

func loadVariables(path string) (vars.Bag, error) {
	bag := vars.Bag{}
	if path == "" {
		return bag, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, &bag); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return bag, nil
}

// promptMissing asks for every template variable the vars file left out and
// returns the collected answers as their own bag.
func promptMissing(source string, bag vars.Bag) (vars.Bag, error) {
	tpl, err := template.Parse(source)
	if err != nil {
		return nil, err
	}
	answers := vars.Bag{}
	for _, name := range tpl.Variables() {
		if _, ok := vars.Lookup(bag, name); ok {
			continue
		}
		var value string
		input := &survey.Input{Message: fmt.Sprintf("Value for {%s}:", name)}
		if err := survey.AskOne(input, &value); err != nil {
			return nil, err
		}
		if value != "" {
			answers[name] = value
		}
	}
	return answers, nil
}
