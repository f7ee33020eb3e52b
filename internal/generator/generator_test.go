package generator

import (
	"strings"
	"testing"

	"github.com/hassan/yalle/internal/ir"
	"github.com/hassan/yalle/internal/optimizer"
	"github.com/hassan/yalle/internal/parser"
	"github.com/hassan/yalle/internal/semantic"
	"github.com/hassan/yalle/internal/semantic/types"
)

func generate(t *testing.T, source string) string {
	t.Helper()
	program, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	analyzed, err := semantic.Analyze(program)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return Generate(optimizer.Optimize(analyzed))
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name: "small",
			source: `
				tag x -= 3 * 7;
				x++;
				x--;
				tag y -= true;
				y -= 5 ** -x / -100 > - x || false;
				holler((y && y) || false || (x*2) != 5);
			`,
			expected: `
let x_1 = 21;
x_1++;
x_1--;
let y_2 = true;
y_2 = (Math.trunc(((5 ** -(x_1)) / -100)) > -(x_1));
console.log(((y_2 && y_2) || ((x_1 * 2) !== 5)));
`,
		},
		{
			name: "if",
			source: `
				tag x -= 0;
				iffin x == 0 ~~{ holler("1"); }
				iffin x == 0 ~~{ holler(1); } otherwise ~~{ holler(2); }
				iffin x == 0 ~~{ holler(1); } otherwise iffin x == 2 ~~{ holler(3); }
				iffin x == 0 ~~{ holler(1); } otherwise iffin x == 2 ~~{ holler(3); } otherwise ~~{ holler(4); }
			`,
			expected: `
let x_1 = 0;
if ((x_1 === 0)) {
  console.log("1");
}
if ((x_1 === 0)) {
  console.log(1);
} else {
  console.log(2);
}
if ((x_1 === 0)) {
  console.log(1);
} else
  if ((x_1 === 2)) {
    console.log(3);
  }
if ((x_1 === 0)) {
  console.log(1);
} else
  if ((x_1 === 2)) {
    console.log(3);
  } else {
    console.log(4);
  }
`,
		},
		{
			name: "while",
			source: `
				tag x -= 0;
				till x < 5 ~~{
					tag y -= 0;
					till y < 5 ~~{
						holler(x * y);
						y -= y + 1;
						whoa;
					}
					x -= x + 1;
				}
			`,
			expected: `
let x_1 = 0;
while ((x_1 < 5)) {
  let y_2 = 0;
  while ((y_2 < 5)) {
    console.log((x_1 * y_2));
    y_2 = (y_2 + 1);
    break;
  }
  x_1 = (x_1 + 1);
}
`,
		},
		{
			name: "functions",
			source: `
				tag z -= 0.5;
				task f\_x: float, y: boolean_/ ~~{
					holler(sin(x) > π);
					roundup;
				}
				task g(): boolean ~~{
					roundup false;
				}
				f(z, g());
			`,
			expected: `
let z_1 = 0.5;
function f_2(x_3, y_4) {
  console.log((Math.sin(x_3) > Math.PI));
  return;
}
function g_5() {
  return false;
}
f_2(z_1, g_5());
`,
		},
		{
			name: "arrays",
			source: `
				tag a -= [true, false, true];
				tag b -= [10, #a - 20, 30];
				brand c -= [[int]]();
				brand d -= random b;
				holler(a[1] || (b[0] < 88 ? false : true));
			`,
			expected: `
let a_1 = [true,false,true];
let b_2 = [10,(a_1.length - 20),30];
const c_3 = [];
const d_4 = ((a=>a[~~(Math.random()*a.length)])(b_2));
console.log((a_1[1] || (((b_2[0] < 88)) ? (false) : (true))));
`,
		},
		{
			name: "ranches",
			source: `
				ranch S -x-x-x-x- x: int -x-x-x-x-
				tag x -= S(3);
				holler(x.x);
				x.x -= 5;
			`,
			expected: `
class S_1 {
  constructor(x_2) {
    this["x_2"] = x_2;
  }
}
let x_3 = new S_1(3);
console.log((x_3["x_2"]));
(x_3["x_2"]) = 5;
`,
		},
		{
			name: "optionals",
			source: `
				tag x -= no int;
				tag y -= x ?? 2;
				ranch T -x-x-x-x- x: int -x-x-x-x-
				tag z -= someodd T(1);
				tag w -= z?.x;
			`,
			expected: `
let x_1 = undefined;
let y_2 = (x_1 ?? 2);
class T_3 {
  constructor(x_4) {
    this["x_4"] = x_4;
  }
}
let z_5 = new T_3(1);
let w_6 = (z_5?.["x_4"]);
`,
		},
		{
			name: "for loops",
			source: `
				for i in 1...50 ~~{ holler(i); }
				for j in [10, 20, 30] ~~{ holler(j); }
				repeat 3 ~~{ }
				for k in 1..<10 ~~{ }
			`,
			expected: `
for (let i_1 = 1; i_1 <= 50; i_1++) {
  console.log(i_1);
}
for (let j_2 of [10,20,30]) {
  console.log(j_2);
}
for (let i_3 = 0; i_3 < 3; i_3++) {
}
for (let k_4 = 1; k_4 < 10; k_4++) {
}
`,
		},
		{
			name: "standard library",
			source: `
				tag x -= 0.5;
				holler(sin(x) - cos(x) + exp(x) * ln(x) / hypot(2.3, x));
				holler(bytes("∞§¶•"));
				holler(codepoints("💪🏽💪🏽🖖👍"));
			`,
			expected: `
let x_1 = 0.5;
console.log(((Math.sin(x_1) - Math.cos(x_1)) + ((Math.exp(x_1) * Math.log(x_1)) / Math.hypot(2.3,x_1))));
console.log([...new TextEncoder().encode("∞§¶•")]);
console.log([...("💪🏽💪🏽🖖👍")].map(s=>s.codePointAt(0)));
`,
		},
		{
			name: "built-in task as value",
			source: `
				tag f -= codepoints;
				holler(f("a"));
			`,
			expected: `
let f_1 = (s=>[...(s)].map(s=>s.codePointAt(0)));
console.log(f_1("a"));
`,
		},
		{
			name: "negative base of power",
			source: `
				tag x -= 3;
				holler(-2 ** x);
				holler(-x ** 2);
			`,
			expected: `
let x_1 = 3;
console.log(((-2) ** x_1));
console.log(((-(x_1)) ** 2));
`,
		},
		{
			name: "float division is not truncated",
			source: `
				tag x -= 7.0;
				holler(x / 2.0);
			`,
			expected: `
let x_1 = 7;
console.log((x_1 / 2));
`,
		},
		{
			name: "same name in sibling scopes",
			source: `
				for i in 1..<2 ~~{ holler(i); }
				for i in 1..<2 ~~{ holler(i); }
			`,
			expected: `
for (let i_1 = 1; i_1 < 2; i_1++) {
  console.log(i_1);
}
for (let i_2 = 1; i_2 < 2; i_2++) {
  console.log(i_2);
}
`,
		},
		{
			name: "dead code is not generated",
			source: `
				iffin false ~~{ holler(1); }
				till false ~~{ holler(2); }
				for i in [int]() ~~{ holler(i); }
				holler(someodd 5 ?? 0);
			`,
			expected: `
console.log((5 ?? 0));
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generate(t, tt.source)
			want := strings.TrimSpace(tt.expected)
			if got != want {
				t.Errorf("Generate() =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestGenerate_EmptyProgram(t *testing.T) {
	if got := Generate(&ir.Program{}); got != "" {
		t.Errorf("Generate() = %q, want empty", got)
	}
}

func TestGenerate_NamesArePerGenerator(t *testing.T) {
	program := &ir.Program{Statements: []ir.Stmt{
		&ir.VariableDeclaration{
			Variable:    &ir.Variable{Name: "x", Type: types.Int},
			Initializer: ir.IntLiteral(1),
		},
	}}

	for i := 0; i < 2; i++ {
		if got := Generate(program); got != "let x_1 = 1;" {
			t.Errorf("Generate() = %q, want %q", got, "let x_1 = 1;")
		}
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		value    interface{}
		expected string
	}{
		{int64(42), "42"},
		{int64(-7), "-7"},
		{0.5, "0.5"},
		{2.0, "2"},
		{-5.22, "-5.22"},
		{1e21, "1e+21"},
		{true, "true"},
		{"plain", `"plain"`},
		{"a\"b\n<&>", `"a\"b\n<&>"`},
		{"héllo", `"héllo"`},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := literal(tt.value); got != tt.expected {
				t.Errorf("literal(%v) = %s, want %s", tt.value, got, tt.expected)
			}
		})
	}
}
