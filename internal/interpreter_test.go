package internal

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testPrinter captures print output for assertions, the same role
// the teacher's exec_test.go testPrinter plays.
type testPrinter struct {
	lines []string
}

func (t *testPrinter) Println(a ...interface{}) (int, error) {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = fmt.Sprintf("%v", v)
	}
	t.lines = append(t.lines, strings.Join(parts, " "))
	return 0, nil
}

func (t *testPrinter) joined() string {
	return strings.Join(t.lines, "\n")
}

func run(source string) (*RunResult, *testPrinter) {
	tp := &testPrinter{}
	result := RunSource(source, RunOptions{Printer: tp})
	return result, tp
}

// checkExpression evaluates a single expression via `print` and
// compares the emitted line, mirroring the teacher's checkExpression.
func checkExpression(t *testing.T, exp, want string) {
	t.Helper()
	result, tp := run("print " + exp + ";")
	assert.False(t, result.HadError, "unexpected static error for %q", exp)
	assert.False(t, result.HadRuntimeError, "unexpected runtime error for %q", exp)
	assert.Equal(t, want, tp.joined())
}

func TestExpressions(t *testing.T) {
	checkExpression(t, "1", "1")
	checkExpression(t, "-1", "-1")
	checkExpression(t, "1 + 2 + 3", "6")
	checkExpression(t, "8 - 2", "6")
	checkExpression(t, "1 * 2 * 3", "6")
	checkExpression(t, "12 / 2", "6")

	checkExpression(t, "true", "true")
	checkExpression(t, "false", "false")
	checkExpression(t, "!false", "true")
	checkExpression(t, "!true", "false")
	checkExpression(t, "!nil", "true")

	checkExpression(t, "true and true", "true")
	checkExpression(t, "false and true", "false")
	checkExpression(t, "false or true", "true")
	checkExpression(t, "false or false", "false")

	checkExpression(t, `"test"`, "test")
	checkExpression(t, `"te" + "st"`, "test")

	checkExpression(t, `"a" == "a"`, "true")
	checkExpression(t, `2*2 == 2*2`, "true")
	checkExpression(t, `10 > 5`, "true")
	checkExpression(t, `10 < 5`, "false")
	checkExpression(t, `(5 <= 5) and (!true or ((1*(1+4)) == 5))`, "true")
}

func TestClosures(t *testing.T) {
	result, tp := run(`
	fun makeCounter() {
		var count = 0;
		fun increment() {
			count = count + 1;
			return count;
		}
		return increment;
	}
	var counter = makeCounter();
	print counter();
	print counter();
	print counter();
	`)
	assert.False(t, result.HadError)
	assert.False(t, result.HadRuntimeError)
	assert.Equal(t, "1\n2\n3", tp.joined())
}

func TestFibonacciRecursion(t *testing.T) {
	result, tp := run(`
	fun fib(n) {
		if (n < 2) return n;
		return fib(n - 1) + fib(n - 2);
	}
	print fib(10);
	`)
	assert.False(t, result.HadError)
	assert.False(t, result.HadRuntimeError)
	assert.Equal(t, "55", tp.joined())
}

func TestForLoopDesugaring(t *testing.T) {
	result, tp := run(`
	var product = 1;
	for (var i = 1; i <= 5; i = i + 1) {
		product = product * i;
	}
	print product;
	`)
	assert.False(t, result.HadError)
	assert.Equal(t, "120", tp.joined())
}

func TestClassesAndInheritance(t *testing.T) {
	result, tp := run(`
	class Food {
		init() {
			this.msg = "good";
		}
	}
	class Pan < Food {
		init() {
			super.init();
		}
	}
	print Pan().msg;
	`)
	assert.False(t, result.HadError)
	assert.False(t, result.HadRuntimeError)
	assert.Equal(t, "good", tp.joined())
}

func TestMethodOverride(t *testing.T) {
	result, tp := run(`
	class Animal {
		speak() {
			return "...";
		}
		describe() {
			return this.speak();
		}
	}
	class Dog < Animal {
		speak() {
			return "Woof";
		}
	}
	print Dog().describe();
	`)
	assert.False(t, result.HadError)
	assert.Equal(t, "Woof", tp.joined())
}

func TestVariableShadowing(t *testing.T) {
	result, tp := run(`
	var a = "global";
	{
		var a = "local";
		print a;
	}
	print a;
	`)
	assert.False(t, result.HadError)
	assert.Equal(t, "local\nglobal", tp.joined())
}

func TestRuntimeErrors(t *testing.T) {
	result, _ := run(`print a;`)
	assert.True(t, result.HadRuntimeError)

	result, _ = run(`print "a" - 1;`)
	assert.True(t, result.HadRuntimeError)

	result, _ = run(`print 1();`)
	assert.True(t, result.HadRuntimeError)
}

func TestStaticErrors(t *testing.T) {
	result, _ := run(`return 1;`)
	assert.True(t, result.HadError)

	result, _ = run(`
	class A < A {
	}
	`)
	assert.True(t, result.HadError)

	result, _ = run(`this.x;`)
	assert.True(t, result.HadError)
}
