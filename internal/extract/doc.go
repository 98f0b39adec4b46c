// Package extract turns raw model text into usable data. CleanCode strips
// markdown fencing and surrounding prose from code responses; ExtractJSON
// locates the first JSON object in a response and, when it does not parse,
// runs an ordered pipeline of textual repairs before giving up. The repair
// order is a contract: later rules assume earlier ones already ran.
package extract
