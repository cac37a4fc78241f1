package scale_test

import (
	"fmt"

	"github.com/matzehuels/scenesvg/pkg/scale"
)

func ExampleParse() {
	for _, text := range []string{"1:100", "10%", `1" = 4m`, "abc"} {
		s := scale.Parse(text)
		if f, ok := s.Factor(); ok {
			fmt.Printf("%s -> %.6g\n", text, f)
		} else {
			fmt.Printf("%s -> invalid\n", text)
		}
	}
	// Output:
	// 1:100 -> 0.01
	// 10% -> 0.1
	// 1" = 4m -> 0.00635
	// abc -> invalid
}

func ExampleScale_Round() {
	s := scale.Parse("1:42")
	fmt.Println(s.Round(scale.CommonTargets, scale.Nearest))
	fmt.Println(s.Floor(scale.CommonTargets))
	fmt.Println(s.Ceil(scale.ExtendedTargets))
	// Output:
	// 1:50
	// 1:50
	// 1:40
}

func ExampleScale_Format() {
	str, _ := scale.New(0.0456).Format()
	fmt.Println(str)
	// Output:
	// ~1:22
}
