package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/graphics"
)

// This example drives a controller by hand, the way a host frame loop would.
func ExampleAnimationController() {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := animation.SetClock(animation.ClockFunc(func() time.Time { return now }))
	defer animation.SetClock(prev)

	controller := animation.NewAnimationController(400 * time.Millisecond)
	defer controller.Dispose()
	controller.AddListener(func() {
		fmt.Printf("value: %.2f\n", controller.Value)
	})
	controller.Forward()

	for range 2 {
		now = now.Add(200 * time.Millisecond)
		animation.StepTickers()
	}
	fmt.Println(controller.Status())
	// Output:
	// value: 0.50
	// value: 1.00
	// completed
}

// This example shows how to use a tween with a plain progress value.
func ExampleTween() {
	colorTween := animation.TweenColor(graphics.RGB(255, 0, 0), graphics.RGB(0, 0, 255))
	fmt.Println(colorTween.Evaluate(0.5))
	// Output: #ff800080
}

// This example resolves easing curves by name.
func ExampleCurveByName() {
	curve, err := animation.CurveByName("cubicBezier(0.4, 0, 0.2, 1)")
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.1f %.1f\n", curve(0), curve(1))
	// Output: 0.0 1.0
}
