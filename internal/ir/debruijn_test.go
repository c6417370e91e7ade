package ir

import "testing"

func TestIsClosed(t *testing.T) {
	cases := []struct {
		name string
		expr Expr
		want bool
	}{
		{"literal", &Literal{Value: IntegerLiteral(nil)}, true},
		{"bound-var-under-lambda", &Lambda{Body: &LambdaVar{Index: 0}}, true},
		{"free-var", &LambdaVar{Index: 0}, false},
		{"escapes-one-lambda", &Lambda{Body: &LambdaVar{Index: 1}}, false},
		{"external", &ExternalVar{Pack: "P", Name: "f"}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsClosed(c.expr); got != c.want {
				t.Errorf("IsClosed() = %v, want %v", got, c.want)
			}
		})
	}
}
