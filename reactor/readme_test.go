package reactor_test

import (
	"fmt"

	"github.com/delaneyj/reactor/reactor"
)

func Example() {
	rt := reactor.New()
	count := reactor.NewSignal(rt, 1)
	doubleCount := reactor.NewMemo(rt, func() int {
		return count.Get() * 2
	})

	effect := reactor.NewEffect(rt, func() {
		fmt.Printf("Count is: %d\n", count.Get())
	})
	defer effect.Dispose()

	fmt.Println(doubleCount.Get())
	count.Set(2)
	doubleCount.MarkDirty()
	rt.FlushPending()
	fmt.Println(doubleCount.Get())

	// Output:
	// Count is: 1
	// 2
	// Count is: 2
	// 4
}

func ExampleEffect_Dispose() {
	rt := reactor.New()
	count := reactor.NewSignal(rt, 1)

	stop := reactor.NewEffect(rt, func() {
		fmt.Printf("Count in scope: %d\n", count.Get())
	})
	count.Set(2)
	rt.FlushPending()

	stop.Dispose()
	count.Set(3)
	rt.FlushPending()

	// Output:
	// Count in scope: 1
	// Count in scope: 2
}
