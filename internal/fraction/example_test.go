package fraction_test

import (
	"fmt"

	"bigfrac/internal/fraction"
)

// The classic walk-through: every operator applied to -2/7 and 4/9.
func Example() {
	var num1 fraction.Fraction // 0/1
	if err := num1.Set("-2/7"); err != nil {
		panic(err)
	}
	num2, err := fraction.FromInt64(4, 9)
	if err != nil {
		panic(err)
	}

	fmt.Println(num1.Add(num2))
	fmt.Println(num1.Sub(num2))
	fmt.Println(num1.Mul(num2))
	quo, err := num1.Quo(num2)
	if err != nil {
		panic(err)
	}
	fmt.Println(quo)

	num1 = num1.Add(num2)
	num1 = num1.Sub(num2)
	num1 = num1.Mul(num2)
	if num1, err = num1.Quo(num2); err != nil {
		panic(err)
	}

	result := fraction.PostInc(&num1)
	fmt.Println(result, num1)
	result = fraction.PreInc(&num1)
	fmt.Println(result, num1)
	result = fraction.PostDec(&num1)
	fmt.Println(result, num1)
	result = fraction.PreDec(&num1)
	fmt.Println(result, num1)
	result = num1.Pos()
	fmt.Println(result)
	result = num1.Neg()
	fmt.Printf("num1: %s, num2: %s, result: %s\n", num1, num2, result)
	// Output:
	// 10/63
	// -46/63
	// -8/63
	// -9/14
	// -2/7 5/7
	// 12/7 12/7
	// 12/7 5/7
	// -2/7 -2/7
	// -2/7
	// num1: -2/7, num2: 4/9, result: 2/7
}

func ExampleFraction_Cmp() {
	a := fraction.MustParse("2/3")
	b := fraction.MustParse("3/5")
	fmt.Println(a.Cmp(b), b.Cmp(a), a.Cmp(fraction.MustParse("4/6")))
	// Output: 1 -1 0
}
