package codegen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/wenyan-lang/wyc/internal/identbimap"
	"github.com/wenyan-lang/wyc/internal/lexer"
	"github.com/wenyan-lang/wyc/internal/parser"
)

func romanTable(m map[rune]string) map[string]string {
	t := make(map[string]string, len(m))
	for r, rom := range m {
		t[fmt.Sprintf("%X", r)] = rom
	}
	return t
}

func compile(t *testing.T, source string, table map[string]string) string {
	t.Helper()
	toks, err := lexer.All(source)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.New(toks).ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	registry := identbimap.Build(prog, table)
	out, err := Generate(prog, registry)
	if err != nil {
		t.Fatalf("codegen error: %v", err)
	}
	return out
}

func TestScenarioA_BasicDeclareAndPrint(t *testing.T) {
	out := compile(t, "吾有一數。曰三。書之。", nil)
	want := "fn main() {\n    let _ans1 = 3.0;\n    println!(\"{}\", _ans1);\n}\n"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestScenarioB_PaddedData(t *testing.T) {
	table := romanTable(map[rune]string{'庚': "geng", '辛': "xin", '壬': "ren", '癸': "gui"})
	out := compile(t, "吾有三數。曰三。曰九。名之曰「庚」。曰「辛」。曰「壬」。曰「癸」。書之。", table)
	if !strings.Contains(out, "let geng = 3.0;") ||
		!strings.Contains(out, "let xin = 9.0;") ||
		!strings.Contains(out, "let ren = 0.0;") ||
		!strings.Contains(out, "println!(\"\");") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestScenarioC_DeferredNamingFromTail(t *testing.T) {
	table := romanTable(map[rune]string{'甲': "jia", '乙': "yi"})
	out := compile(t, "加一以三。加二以三。加三以三。名之曰「甲」。名之曰「乙」。書之。", table)
	want := "fn main() {\n" +
		"    let _ans1 = 1.0 + 3.0;\n" +
		"    let _ans2 = 2.0 + 3.0;\n" +
		"    let _ans3 = 3.0 + 3.0;\n" +
		"    let jia = _ans3;\n" +
		"    let yi = _ans2;\n" +
		"    println!(\"{}\", _ans1);\n" +
		"}\n"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestScenarioD_PronounSingleUse(t *testing.T) {
	out := compile(t, "加一以三。加二以三。減其以其。", nil)
	if !strings.Contains(out, "let _ans3 = _ans2 - NaN;") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestScenarioE_ForCountLoopWithInheritedPending(t *testing.T) {
	out := compile(t, "吾有二言。曰「「天地。」」。為是三遍。書之。吾有一言。曰「「問天地好在。」」。書之。云云。", nil)
	want := "fn main() {\n" +
		"    let _ans1 = \"天地。\";\n" +
		"    let _ans2 = \"\";\n" +
		"    for _ in 0..3 {\n" +
		"        println!(\"{} {}\", _ans1, _ans2);\n" +
		"        let _ans3 = \"問天地好在。\";\n" +
		"        println!(\"{}\", _ans3);\n" +
		"    }\n" +
		"}\n"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestScenarioF_MutabilityInference(t *testing.T) {
	table := romanTable(map[rune]string{'甲': "jia"})
	out := compile(t, "今有數一。名之曰「甲」。昔之「甲」者今五是矣。", table)
	want := "fn main() {\n" +
		"    let mut jia = 1.0;\n" +
		"    jia = 5.0;\n" +
		"}\n"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestArrayFillSingleAndMultiElement(t *testing.T) {
	table := romanTable(map[rune]string{'甲': "jia"})
	out := compile(t, "充「甲」以三。", table)
	if !strings.Contains(out, "jia.push(3.0);") {
		t.Fatalf("got:\n%s", out)
	}

	out2 := compile(t, "充「甲」以三以九。", table)
	if !strings.Contains(out2, "jia.append(&mut vec![3.0, 9.0]);") {
		t.Fatalf("got:\n%s", out2)
	}
}

func TestArrayFillPronounTargetAborts(t *testing.T) {
	toks, err := lexer.All("夫三。充其以三。")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.New(toks).ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	registry := identbimap.Build(prog, nil)
	if _, err := Generate(prog, registry); err == nil {
		t.Fatalf("expected QiAsArrayTarget error")
	}
}

func TestArrayCat(t *testing.T) {
	table := romanTable(map[rune]string{'甲': "jia", '乙': "yi"})
	out := compile(t, "銜「甲」以「乙」。", table)
	if !strings.Contains(out, "let _ans1 = [&jia[..], &yi[..]].concat();") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestIfElseIfElse(t *testing.T) {
	out := compile(t, "若三等於三者。書之。或若三等於九者。書之。若非。書之。云云。", nil)
	if !strings.Contains(out, "if 3.0 == 3.0 {") ||
		!strings.Contains(out, "} else if 3.0 == 9.0 {") ||
		!strings.Contains(out, "} else {") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestIfPronounShorthand(t *testing.T) {
	out := compile(t, "加一以三。若其然者。書之。云云。", nil)
	if !strings.Contains(out, "if _ans1 {") {
		t.Fatalf("got:\n%s", out)
	}
}
