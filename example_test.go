package easythreads_test

import (
	"context"
	"fmt"
	"time"

	et "github.com/sahillihas/EasyThreads"
)

func ExampleManager() {
	m, err := et.New[string](et.Options{Workers: 2})
	if err != nil {
		panic(err)
	}
	defer m.Stop()

	for _, word := range []string{"alpha", "beta", "gamma"} {
		_, err := m.Submit(et.Task[string]{
			Name:    word,
			Payload: word,
			Fn: func(_ context.Context, w string) (any, error) {
				return len(w), nil
			},
		})
		if err != nil {
			panic(err)
		}
	}

	if left := m.JoinTimeout(5 * time.Second); len(left) != 0 {
		panic(fmt.Sprintf("unfinished: %v", left))
	}

	n, _ := m.Result("gamma")
	fmt.Println("gamma:", n)
	// Output: gamma: 5
}
