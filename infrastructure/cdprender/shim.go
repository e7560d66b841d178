package cdprender

// mediaShim wraps navigator.mediaDevices.getUserMedia so capability requests
// reach the host binding before the engine's own permission machinery. The
// host settles each request through window.__hostviewSettle.
const mediaShim = `(() => {
  if (!navigator.mediaDevices || !navigator.mediaDevices.getUserMedia) return;
  const pending = new Map();
  let seq = 0;
  window.__hostviewSettle = (id, granted) => {
    const p = pending.get(id);
    if (!p) return;
    pending.delete(id);
    if (granted) {
      p.allow();
    } else {
      p.block();
    }
  };
  const orig = navigator.mediaDevices.getUserMedia.bind(navigator.mediaDevices);
  navigator.mediaDevices.getUserMedia = (constraints) => new Promise((resolve, reject) => {
    const id = 'perm-' + (++seq);
    pending.set(id, {
      allow: () => orig(constraints).then(resolve, reject),
      block: () => reject(new DOMException('Permission denied', 'NotAllowedError')),
    });
    const capabilities = [];
    if (constraints && constraints.video) capabilities.push('video-capture');
    if (constraints && constraints.audio) capabilities.push('audio-capture');
    window.__hostviewPermission(JSON.stringify({ id, origin: location.origin, capabilities }));
  });
})();`
