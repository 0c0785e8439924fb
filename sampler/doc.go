// Package sampler draws minimal samples of correspondence indices for the
// estimation loop. The provided Uniform sampler is seeded and
// deterministic; alternative strategies (progressive, spatially guided)
// plug in through the Sampler interface.
package sampler
