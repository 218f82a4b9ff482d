//	Пакет main поддерживает следующие анализаторы
//
// osexit - самописный анализатор os.Exit в main,
// errcheck - проверка на обработку ошибок,
// staticcheck и simple - анализаторы staticcheck.io,
// analysis - стандартный пакет анализаторов.
package main

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unusedresult"

	"github.com/kisielk/errcheck/errcheck"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck" //staticcheck.io

	"github.com/SversusN/bodacious/cmd/staticlint/osexit"
)

func main() {
	var chks []*analysis.Analyzer

	// Все анализаторы SA и часть S1.
	for _, v := range staticcheck.Analyzers {
		chks = append(chks, v.Analyzer)
	}
	for _, v := range simple.Analyzers {
		switch v.Analyzer.Name {
		case "S1002", "S1005", "S1008", "S1011", "S1021":
			chks = append(chks, v.Analyzer)
		}
	}

	chks = append(
		chks,
		osexit.OSExitAnalyzer, // os.Exit в main.
		printf.Analyzer,       // форматированная печать printf.
		shadow.Analyzer,       // shadow-переопределения.
		structtag.Analyzer,    // теги json, env и db у структур.
		nilness.Analyzer,      // заведомо nil значения.
		unusedresult.Analyzer, // отброшенный результат чистых функций.
		errcheck.Analyzer,     // обработка ошибок.
	)

	multichecker.Main(chks...)
}
